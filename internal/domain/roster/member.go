package roster

// Member is one entry of the club roster. Emeritus members come from the
// alumni sheet and receive the weekly notice alongside active members.
type Member struct {
	Name     string
	Email    string
	Emeritus bool
}

// Addresses returns the email distribution list: members are kept in the
// order given and members without an email address are dropped.
func Addresses(members []Member) []string {
	addrs := make([]string, 0, len(members))
	for _, m := range members {
		if m.Email == "" {
			continue
		}
		addrs = append(addrs, m.Email)
	}
	return addrs
}
