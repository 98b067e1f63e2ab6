// Package wordgen implements the 造词 feature: it samples unseen CJK
// character combinations from the lexicon character pool, asks a chat
// model which of them are real Chinese words, and keeps an audit log
// of every verdict.
package wordgen
