// Package web serves the task tracker HTTP surface: task, user, and
// equipment pages, administrative reports, and CSV exports.
package web
