// Package searchselect hosts enhanced pages server-side. Each GET on the
// component route opens a session: the configured option catalogs are rendered
// as native selects, every enhancer is attached, and the enhanced page is
// returned. Browsers (or tests) then post user events for a control and get
// the re-rendered widget fragment back.
//
// Routes, relative to the mount point:
//
//	GET    /                 new session page (X-Enhancers-Session header)
//	GET    /{id}             current session page
//	DELETE /{id}             close the session
//	GET    /{id}/values      selected values and change log as JSON
//	POST   /{id}/events      apply one event, respond with the widget fragment
//	GET    /assets/...       stylesheet
package searchselect
