package domain

import (
	"encoding/json"
	"slices"
)

// Notification accumulates validation errors for one aggregate. Errors are
// keyed by field, or by the message itself when no field applies. Keys keep
// their insertion order.
//
// The zero value is ready to use.
type Notification struct {
	order  []string
	errors map[string]*notificationEntry
}

type notificationEntry struct {
	standalone bool
	messages   []string
}

func NewNotification() *Notification {
	return &Notification{}
}

// AddError records a field-less error.
func (n *Notification) AddError(message string) {
	n.set(message, &notificationEntry{standalone: true, messages: []string{message}})
}

// AddFieldError appends message to field unless field already holds it.
func (n *Notification) AddFieldError(field, message string) {
	entry, ok := n.errors[field]
	if !ok || entry.standalone {
		n.set(field, &notificationEntry{messages: []string{message}})
		return
	}

	if !slices.Contains(entry.messages, message) {
		entry.messages = append(entry.messages, message)
	}
}

// SetError records each message as a field-less error.
func (n *Notification) SetError(messages ...string) {
	for _, m := range messages {
		n.AddError(m)
	}
}

// SetFieldError replaces the messages held by field. Passing no messages
// removes the field.
func (n *Notification) SetFieldError(field string, messages ...string) {
	if len(messages) == 0 {
		n.remove(field)
		return
	}

	deduped := make([]string, 0, len(messages))
	for _, m := range messages {
		if !slices.Contains(deduped, m) {
			deduped = append(deduped, m)
		}
	}

	n.set(field, &notificationEntry{messages: deduped})
}

// CopyErrors sets every entry of other onto n.
func (n *Notification) CopyErrors(other *Notification) {
	if other == nil {
		return
	}

	for _, key := range other.order {
		entry := other.errors[key]
		if entry.standalone {
			n.AddError(key)
			continue
		}

		n.SetFieldError(key, entry.messages...)
	}
}

func (n *Notification) HasErrors() bool {
	for _, entry := range n.errors {
		if len(entry.messages) > 0 {
			return true
		}
	}

	return false
}

// FieldErrors returns the messages recorded for field.
func (n *Notification) FieldErrors(field string) []string {
	entry, ok := n.errors[field]
	if !ok || entry.standalone {
		return nil
	}

	return slices.Clone(entry.messages)
}

// ToJSON lists field-less errors as strings and field errors as single-key
// maps, in insertion order.
func (n *Notification) ToJSON() []any {
	out := make([]any, 0, len(n.order))

	for _, key := range n.order {
		entry := n.errors[key]
		if entry.standalone {
			out = append(out, key)
			continue
		}

		out = append(out, map[string][]string{key: slices.Clone(entry.messages)})
	}

	return out
}

func (n *Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToJSON())
}

func (n *Notification) set(key string, entry *notificationEntry) {
	if n.errors == nil {
		n.errors = make(map[string]*notificationEntry)
	}

	if _, ok := n.errors[key]; !ok {
		n.order = append(n.order, key)
	}

	n.errors[key] = entry
}

func (n *Notification) remove(key string) {
	if _, ok := n.errors[key]; !ok {
		return
	}

	delete(n.errors, key)
	n.order = slices.DeleteFunc(n.order, func(k string) bool { return k == key })
}
