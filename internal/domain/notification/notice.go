// internal/domain/notification/notice.go
package notification

// Attachment is an inline file referenced from the HTML body by Content-ID.
type Attachment struct {
	Name string // Also used as the Content-ID
	Data []byte
}

// Notice is a fully rendered message, ready for any transport.
type Notice struct {
	Kind        OutcomeKind
	Subject     string
	Body        string // HTML
	Summary     string // Plain text for chat transports
	Attachments []Attachment
}

// Contact is a name/email pair printed in the notice footer.
type Contact struct {
	Name  string
	Email string
}

// Contacts are the people named in every notice.
type Contacts struct {
	SwitchNotify1    Contact
	SwitchNotify2    Contact
	ExcelMaintainer  Contact
	ScriptMaintainer Contact
}

// Maintainers returns the addresses that receive missing-assignment alerts.
func (c Contacts) Maintainers() []string {
	var addrs []string
	for _, m := range []Contact{c.ExcelMaintainer, c.ScriptMaintainer} {
		if m.Email != "" {
			addrs = append(addrs, m.Email)
		}
	}
	return addrs
}
