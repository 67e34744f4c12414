package authz

import "testing"

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleCoach, RolePlayer, RoleParent, RoleChild} {
		if !r.Valid() {
			t.Errorf("Valid(%q) = false, want true", r)
		}
	}
	for _, r := range []Role{"", "ADMIN", "manager", "Player"} {
		if r.Valid() {
			t.Errorf("Valid(%q) = true, want false", r)
		}
	}
}

func TestCanManageSessions(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleCoach, true},
		{RolePlayer, false},
		{RoleParent, false},
		{RoleChild, false},
	}
	for _, tt := range tests {
		if got := CanManageSessions(tt.role); got != tt.want {
			t.Errorf("CanManageSessions(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestCanBook(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RolePlayer, true},
		{RoleChild, true},
		{RoleParent, true},
		{RoleAdmin, false},
		{RoleCoach, false},
	}
	for _, tt := range tests {
		if got := CanBook(tt.role); got != tt.want {
			t.Errorf("CanBook(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestCanViewSessionBookings(t *testing.T) {
	coach := uint64(7)
	other := uint64(8)
	tests := []struct {
		name    string
		role    Role
		viewer  uint64
		coachID *uint64
		want    bool
	}{
		{"admin always", RoleAdmin, 1, nil, true},
		{"coach own session", RoleCoach, 7, &coach, true},
		{"coach other session", RoleCoach, 7, &other, false},
		{"coach unassigned session", RoleCoach, 7, nil, false},
		{"player never", RolePlayer, 7, &coach, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewSessionBookings(tt.role, tt.viewer, tt.coachID); got != tt.want {
				t.Errorf("CanViewSessionBookings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanViewOwned(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		viewer uint64
		owner  uint64
		want   bool
	}{
		{"owner reads own", RolePlayer, 5, 5, true},
		{"stranger denied", RolePlayer, 5, 6, false},
		{"admin reads any", RoleAdmin, 1, 6, true},
		{"coach denied on others", RoleCoach, 2, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanViewOwned(tt.role, tt.viewer, tt.owner); got != tt.want {
				t.Errorf("CanViewOwned() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdminOnlyPredicates(t *testing.T) {
	if !CanViewAllBookings(RoleAdmin) || CanViewAllBookings(RoleCoach) {
		t.Error("CanViewAllBookings must hold for admin only")
	}
	if !CanManageDiscounts(RoleAdmin) || CanManageDiscounts(RolePlayer) {
		t.Error("CanManageDiscounts must hold for admin only")
	}
	if !CanManageTeams(RoleAdmin) || !CanManageTeams(RoleCoach) || CanManageTeams(RoleParent) {
		t.Error("CanManageTeams must hold for admin and coach only")
	}
}
