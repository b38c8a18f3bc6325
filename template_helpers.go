package authfront

import "github.com/goliatone/go-router"

var TemplateUserKey = "current_user"

// TemplateHelpers returns globals for the view engine so templates can react
// to session state without each handler threading it through.
//
// In templates:
//
//	{% if is_authenticated %}
//	{{ current_user.nickname }}
func TemplateHelpers(session SessionReader) map[string]any {
	return map[string]any{
		"is_authenticated": func() bool {
			if session == nil {
				return false
			}
			return session.IsAuthenticated()
		},
	}
}

// MergeSessionData injects the current user and session flags into a view
// context, keeping any values the caller already set.
func MergeSessionData(store *Store, data router.ViewContext) router.ViewContext {
	if data == nil {
		data = router.ViewContext{}
	}

	if store == nil {
		return data
	}

	state := store.State()
	if _, ok := data[TemplateUserKey]; !ok {
		data[TemplateUserKey] = state.User
	}
	if _, ok := data["is_authenticated"]; !ok {
		data["is_authenticated"] = state.IsAuthenticated
	}
	if _, ok := data["is_loading"]; !ok {
		data["is_loading"] = state.IsLoading
	}

	return data
}
