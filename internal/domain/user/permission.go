package user

type Permission string

const (
	// Attendance
	PermissionAttendanceView Permission = "attendance.view"
	PermissionAttendanceMark Permission = "attendance.mark"

	// Timesheet & approval workflow
	PermissionTimesheetView   Permission = "timesheet.view"
	PermissionTimesheetSubmit Permission = "timesheet.submit"
	PermissionApprovalDecide  Permission = "approval.decide"

	// Statutory contribution register
	PermissionEsiView   Permission = "esi.view"
	PermissionEsiManage Permission = "esi.manage"

	// Employee records
	PermissionEmployeeEdit   Permission = "employee.edit"
	PermissionSalaryRevise   Permission = "salary.revise"
	PermissionRevisionView   Permission = "salary.view_revisions"
	PermissionExportDownload Permission = "export.download"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAttendanceView,
		PermissionAttendanceMark,
		PermissionTimesheetView,
		PermissionApprovalDecide,
		PermissionEsiView,
		PermissionEsiManage,
		PermissionEmployeeEdit,
		PermissionSalaryRevise,
		PermissionRevisionView,
		PermissionExportDownload,
	},
	RoleHR: {
		PermissionAttendanceView,
		PermissionAttendanceMark,
		PermissionTimesheetView,
		PermissionTimesheetSubmit,
		PermissionEsiView,
		PermissionEsiManage,
		PermissionEmployeeEdit,
		PermissionExportDownload,
	},
	RoleEmployee: {
		PermissionAttendanceView,
		PermissionTimesheetView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
