// Package wordlist loads candidate secrets, one per line.
//
// An embedded list of common Express secrets is used when no file is given.
package wordlist
