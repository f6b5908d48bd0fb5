package view

import "omenblog/internal/models"

// Layout names the page chrome a response is rendered in.
type Layout string

const (
	LayoutMain   Layout = "main"
	LayoutMember Layout = "member"
	LayoutAdmin  Layout = "admin"
)

// LayoutFor picks the layout from who is asking. Invalid sessions get the
// same chrome as anonymous visitors.
func LayoutFor(identity models.Identity) Layout {
	switch {
	case identity.IsAdmin():
		return LayoutAdmin
	case identity.IsAuthenticated():
		return LayoutMember
	default:
		return LayoutMain
	}
}
