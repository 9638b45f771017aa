package models

// Host is one member of the configured podcast host roster. The roster is
// fixed at startup; this core only reads it.
type Host struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// HostStatus is the public view of a host, including whether their
// calendar is currently connected.
type HostStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Connected bool   `json:"connected"`
}
