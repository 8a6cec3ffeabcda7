/*
Package memory keeps a bounded, timestamped log of query/answer interactions.

The log is capped: once it grows past its maximum length the oldest entries
are evicted first. FileStore persists the whole log as a single JSON
document after every change; MemStore keeps it in memory only.

Concurrent writers from different processes are not coordinated. The last
process to write the file wins.
*/
package memory

import "strings"

// Roles used by the retrieval engine.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultMaxEntries is the retention cap used when none is configured.
const DefaultMaxEntries = 25

// Record is one logged interaction.
type Record struct {
	// ID is a unique identifier assigned on append.
	ID string `json:"id,omitempty"`

	// Timestamp is the RFC 3339 time the record was appended.
	Timestamp string `json:"timestamp"`

	// Role is a free-form tag, normally "user" or "assistant".
	Role string `json:"role"`

	Query     string `json:"query"`
	Response  string `json:"response"`
	Reference string `json:"reference"`
	Example   string `json:"example"`
	Notes     string `json:"notes"`

	// ContextTags labels the interaction (for example the section filter).
	ContextTags []string `json:"context_tags"`
}

// Match is a search hit together with its zero-based position in the log.
type Match struct {
	Index  int    `json:"index"`
	Record Record `json:"record"`
}

// Update lists the fields to change on an existing record.
// Nil fields are left untouched.
type Update struct {
	Role        *string
	Query       *string
	Response    *string
	Reference   *string
	Example     *string
	Notes       *string
	ContextTags *[]string
}

// UpdateFromFields builds an Update from field-name/value pairs.
//
// Unrecognized names are ignored. context_tags is a comma-separated list.
func UpdateFromFields(fields map[string]string) Update {
	var u Update
	for name, value := range fields {
		v := value
		switch name {
		case "role":
			u.Role = &v
		case "query":
			u.Query = &v
		case "response":
			u.Response = &v
		case "reference":
			u.Reference = &v
		case "example":
			u.Example = &v
		case "notes":
			u.Notes = &v
		case "context_tags":
			tags := splitTags(v)
			u.ContextTags = &tags
		}
	}
	return u
}

func (u Update) apply(r *Record) {
	if u.Role != nil {
		r.Role = *u.Role
	}
	if u.Query != nil {
		r.Query = *u.Query
	}
	if u.Response != nil {
		r.Response = *u.Response
	}
	if u.Reference != nil {
		r.Reference = *u.Reference
	}
	if u.Example != nil {
		r.Example = *u.Example
	}
	if u.Notes != nil {
		r.Notes = *u.Notes
	}
	if u.ContextTags != nil {
		r.ContextTags = append([]string{}, (*u.ContextTags)...)
	}
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (r Record) clone() Record {
	r.ContextTags = append([]string{}, r.ContextTags...)
	return r
}
