package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications. Tests swap it out.
var Notifier = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Info(title, message string) error {
	return Notifier(title, message)
}

// FormatSelection builds the body of the notification shown after a constant is picked.
func FormatSelection(typeLabel, value string) string {
	return fmt.Sprintf("%s: %s", typeLabel, value)
}

// Selected notifies about a confirmed pick under the given localized title.
func Selected(title, typeLabel, value string) error {
	return Info(title, FormatSelection(typeLabel, value))
}
