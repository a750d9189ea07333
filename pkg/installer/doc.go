// Package installer drives the install, update, and uninstall lifecycle of
// a file form: it loads the schema from the package, seeds defaults from a
// previous artifact on update, hands a form to the engine, writes the
// artifact once values were submitted, and keeps the bookkeeping record in
// step.
//
// Install and Update are re-entrant. The first call registers the form and
// returns StateAwaitingSubmission; once the engine holds submitted values
// the next call writes the artifact and returns StateDone. Run performs both
// steps with a form.Collector.
package installer
