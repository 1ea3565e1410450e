// Package launch builds and runs the java command line that starts the
// external NER toolkit, either as a long-running socket server or as a
// one-shot file tagger. Building the command is pure; running it spawns
// the JVM with the toolkit directory as its working directory and reports
// the child's exit code back to the caller.
package launch
