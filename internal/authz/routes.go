// Copyright (c) 2026 Communia. All rights reserved.
// Author: dev@communia.app

package authz

import (
	"sort"
	"strings"
)

// ProtectedRoute binds a path prefix to the minimum role required to enter it.
//
// Matching is plain "request path starts with Prefix"; when several entries
// match the same path, the longest prefix decides.
type ProtectedRoute struct {
	Prefix string
	Role   Role
}

// DefaultRoutes returns the protected admin route table.
//
// # Compatibility
//
// The prefixes and levels mirror the public site's admin sections and must
// stay in sync with the frontend's navigation. Order is irrelevant: the
// classifier resolves overlaps by longest prefix, never by table position.
func DefaultRoutes() []ProtectedRoute {
	return []ProtectedRoute{
		{Prefix: "/admin/users", Role: RoleSuperAdmin},
		{Prefix: "/admin/dashboard", Role: RoleAdmin},
		{Prefix: "/admin/gallery", Role: RoleAdmin},
		{Prefix: "/admin/gallery/add", Role: RoleAdmin},
		{Prefix: "/admin/events", Role: RoleAdmin},
		{Prefix: "/admin/events/add", Role: RoleAdmin},
		{Prefix: "/admin/banners", Role: RoleAdmin},
		{Prefix: "/admin/announcements", Role: RoleAdmin},
		{Prefix: "/admin/donations", Role: RoleAdmin},
		{Prefix: "/admin/contacts", Role: RoleAdmin},
		{Prefix: "/admin/cleanup", Role: RoleAdmin},
		{Prefix: "/admin/qr-codes", Role: RoleAdmin},
	}
}

// DefaultBypassPrefixes returns path prefixes that are excluded from
// classification entirely: API routes, frontend build assets, and public
// images. These are checked before the route table is ever consulted.
func DefaultBypassPrefixes() []string {
	return []string{
		"/api/",
		"/_next/",
		"/images/",
	}
}

// DefaultPublicPaths returns exact paths that are public despite living
// near the admin surface: the bare admin landing (login) page and the
// favicon.
func DefaultPublicPaths() []string {
	return []string{
		"/admin",
		"/favicon.ico",
	}
}

// Classifier maps a request path to the minimum role required to access it.
//
// # Concurrency
//
// The table is copied at construction and never mutated afterwards, so a
// single Classifier is safe for unlimited concurrent readers with no locking.
type Classifier struct {
	routes []ProtectedRoute
	bypass []string
	public map[string]struct{}
}

// NewClassifier builds an immutable Classifier from a route table, a bypass
// prefix list, and an exact-match public path list.
//
// Routes are sorted longest-prefix-first once at construction so that
// [Classifier.Classify] resolves overlapping prefixes deterministically
// regardless of input order.
func NewClassifier(routes []ProtectedRoute, bypassPrefixes, publicPaths []string) *Classifier {
	table := make([]ProtectedRoute, len(routes))
	copy(table, routes)

	// Longest prefix first; ties broken lexicographically for determinism.
	sort.Slice(table, func(i, j int) bool {
		if len(table[i].Prefix) != len(table[j].Prefix) {
			return len(table[i].Prefix) > len(table[j].Prefix)
		}
		return table[i].Prefix < table[j].Prefix
	})

	public := make(map[string]struct{}, len(publicPaths))
	for _, path := range publicPaths {
		public[NormalizePath(path)] = struct{}{}
	}

	bypass := make([]string, len(bypassPrefixes))
	copy(bypass, bypassPrefixes)

	return &Classifier{
		routes: table,
		bypass: bypass,
		public: public,
	}
}

// NewDefaultClassifier builds a Classifier over the standard Communia
// route table and bypass lists.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultRoutes(), DefaultBypassPrefixes(), DefaultPublicPaths())
}

// NormalizePath strips trailing slashes so that "/admin/events/" and
// "/admin/events" classify identically. The root path "/" is preserved.
// Matching is case-sensitive: URL paths are case-sensitive and the route
// table is lowercase.
func NormalizePath(path string) string {
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// Bypassed reports whether the path is excluded from classification
// entirely (static assets, API routes, explicit public entry points).
func (classifier *Classifier) Bypassed(path string) bool {
	normalized := NormalizePath(path)

	if _, ok := classifier.public[normalized]; ok {
		return true
	}

	for _, prefix := range classifier.bypass {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// Classify returns the minimum role required to access the given path.
//
// # Returns
//   - (role, true) when the path matches a protected prefix; overlapping
//     prefixes resolve to the longest match.
//   - ("", false) when the path is public.
//
// Same path always yields the same result: the table is immutable and the
// scan order is fixed at construction.
func (classifier *Classifier) Classify(path string) (Role, bool) {
	normalized := NormalizePath(path)

	// Routes are pre-sorted longest-first, so the first hit is the most
	// specific matching prefix.
	for _, route := range classifier.routes {
		if strings.HasPrefix(normalized, route.Prefix) {
			return route.Role, true
		}
	}

	return "", false
}
