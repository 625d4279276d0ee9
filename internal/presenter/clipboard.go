package presenter

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

var writeClipboard = clipboard.WriteAll

// CopyToClipboard never fails the command; a missing clipboard only shows
// up in debug logs.
func CopyToClipboard(text string) bool {
	if err := writeClipboard(text); err != nil {
		log.Debug().Err(err).Msg("could not copy to clipboard")
		return false
	}

	return true
}
