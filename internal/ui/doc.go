// Package ui implements the interactive configuration prompt using bubbletea's Elm architecture.
//
// [FormModel] renders a vertical form of [textinput.Model] fields for the
// run parameters (user id, OAuth credentials, mode, fetch count, output
// directory), pre-filled from the environment-derived defaults. Enter
// advances through the fields and submits on the last one; esc or ctrl+c
// aborts. The collected values are parsed and validated by
// [FormModel.Result] after the program exits, so the caller decides what
// to do with an aborted or invalid form.
//
// The form only gathers configuration. The pipeline itself runs on the
// plain console afterwards, where per-item status lines and the progress
// bar are rendered.
package ui
