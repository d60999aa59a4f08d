package model

type View string

const (
	ViewContextPicker View = "context-picker"
	ViewTaskList      View = "task-list"
	ViewCreateTask    View = "create-task"
	ViewDashboard     View = "dashboard"
)

func (v View) IsValid() bool {
	switch v {
	case ViewContextPicker, ViewTaskList, ViewCreateTask, ViewDashboard:
		return true
	default:
		return false
	}
}
