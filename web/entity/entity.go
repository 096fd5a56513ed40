// Package entity defines data structures used by the web layer of the
// cms-ui panel.
package entity

// Msg represents a standard API response message with success status,
// message text, and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// NavItem is one entry of the site navigation document. Active is a
// pointer so an omitted flag can default to true while an explicit
// false survives normalization.
type NavItem struct {
	Id       string  `json:"id" form:"id"`
	Label    string  `json:"label" form:"label"`
	Href     string  `json:"href" form:"href"`
	Order    float64 `json:"order" form:"order"`
	External bool    `json:"external" form:"external"`
	Active   *bool   `json:"active" form:"active"`
}

// IsActive reports the normalized active flag; an unset flag reads as
// active.
func (i *NavItem) IsActive() bool {
	return i.Active == nil || *i.Active
}

// SystemStatus carries the host metrics shown on the panel status page.
type SystemStatus struct {
	Cpu float64 `json:"cpu"`
	Mem struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Uptime   uint64 `json:"uptime"`
	Version  string `json:"version"`
	Degraded bool   `json:"degraded"`
}
