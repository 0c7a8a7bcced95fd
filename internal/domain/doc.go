// Package domain defines the student record model and the contracts shared
// across the app. It contains plain types and interfaces only; persistence
// lives in internal/store and the login gate in internal/services/auth.
package domain
