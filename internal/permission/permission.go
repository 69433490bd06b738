// Package permission derives capability flags from a user's role score.
// It is pure: no I/O, no side effects, a single canonical comparison.
package permission

import "github.com/hasan-mia/the-x-tribune-server/internal/model"

// Fixed score thresholds. These are constants of the design, not
// configuration.
const (
	ScoreUser       = 1
	ScoreAdmin      = 10
	ScoreSuperAdmin = 999
)

// roleScores maps the fixed role enumeration to its threshold.
var roleScores = map[string]int{
	model.RoleNameUser:       ScoreUser,
	model.RoleNameAdmin:      ScoreAdmin,
	model.RoleNameSuperAdmin: ScoreSuperAdmin,
}

// Evaluator answers permission questions for one user. A nil user means
// unauthenticated: every check fails, including HasPermission(0).
type Evaluator struct {
	user *model.User
}

// NewEvaluator wraps a user, which may be nil.
func NewEvaluator(user *model.User) Evaluator {
	return Evaluator{user: user}
}

// RoleScore returns the user's role score, or 0 when unauthenticated.
func (e Evaluator) RoleScore() int {
	if e.user == nil {
		return 0
	}
	return e.user.Role.Score
}

// HasPermission reports whether the user's score meets the required minimum.
// An authenticated user with score 0 passes HasPermission(0); an
// unauthenticated caller never passes any check.
func (e Evaluator) HasPermission(requiredScore int) bool {
	if e.user == nil {
		return false
	}
	return e.user.Role.Score >= requiredScore
}

// HasRolePermission checks against a named role's threshold. Unknown role
// names never pass.
func (e Evaluator) HasRolePermission(roleName string) bool {
	score, ok := roleScores[roleName]
	if !ok {
		return false
	}
	return e.HasPermission(score)
}

// IsAdmin reports administrative capability (score >= 10).
func (e Evaluator) IsAdmin() bool { return e.HasPermission(ScoreAdmin) }

// IsSuperAdmin reports super-administrative capability (score >= 999).
func (e Evaluator) IsSuperAdmin() bool { return e.HasPermission(ScoreSuperAdmin) }

// IsUser reports basic capability: any authenticated user, including score 0.
func (e Evaluator) IsUser() bool { return e.HasPermission(0) }
