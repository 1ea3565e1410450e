// Package nerclient talks to a running NER socket server. The protocol is
// one round trip per line of text: connect, send the line terminated by a
// newline, read the slash-tagged line the server answers with. Helpers
// parse that reply into tokens and group adjacent tokens into entities.
package nerclient
