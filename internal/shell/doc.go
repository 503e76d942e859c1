// Package shell implements the organizer's interactive command session.
//
// A Session tracks the current folder for the user and translates commands
// such as "add notes.txt Documents" into organizer calls with explicit paths.
// On a terminal the session runs under go-prompt with command and name
// completion; piped input is executed line by line, which makes scripted use
// and tests straightforward.
package shell
