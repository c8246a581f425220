package middleware

import "testing"

func TestAccessContextPermissions(t *testing.T) {
	tests := []struct {
		name      string
		ctx       AccessContext
		wantAdmin bool
		wantWrite bool
		wantRead  bool
	}{
		{"superadmin full", AccessContext{RoleName: RoleSuperAdmin, PermissionType: "full"}, true, true, true},
		{"organizer full", AccessContext{RoleName: RoleOrganizer, PermissionType: "full"}, true, true, true},
		{"organizer readonly", AccessContext{RoleName: RoleOrganizer, PermissionType: "readonly"}, true, false, true},
		{"participant full", AccessContext{RoleName: RoleParticipant, PermissionType: "full"}, false, true, true},
		{"participant readonly", AccessContext{RoleName: RoleParticipant, PermissionType: "readonly"}, false, false, true},
		{"anonymous zero value", AccessContext{}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.IsAdmin(); got != tt.wantAdmin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.wantAdmin)
			}
			if got := tt.ctx.CanWrite(); got != tt.wantWrite {
				t.Errorf("CanWrite() = %v, want %v", got, tt.wantWrite)
			}
			if got := tt.ctx.CanRead(); got != tt.wantRead {
				t.Errorf("CanRead() = %v, want %v", got, tt.wantRead)
			}
		})
	}
}
