// Package publish writes the artifact catalog to disk.
//
// StaticPublisher renders the overview and every detail page once and writes
// them under a fixed layout:
//
//	index.html
//	style.css
//	page/<id>/index.html
//
// SubpathPublisher copies such a tree to a second location and rewrites the
// copy for hosting below a non-root path. Site ties both stages together for
// the build command, and Watcher reruns a full Site build when the data
// directory changes.
package publish
