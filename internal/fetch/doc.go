// Package fetch installs the external NER toolkit: it downloads the
// distribution archive, extracts it, and renames the extracted tree to its
// canonical local name. Downloads resume from partial files, the way
// wget -c would. Failures leave whatever was produced on disk for
// inspection; only a completed install removes the archive.
package fetch
