package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// PickingRepository puerto de persistencia de tareas de picking.
type PickingRepository interface {
	GetTask(id string) (*entity.PickingTask, error)
	GetTaskByOutbound(outboundID string) (*entity.PickingTask, error)
	CreateTask(t *entity.PickingTask) error
	CreateLine(l *entity.PickingTaskLine) error
	ListLines(taskID string) ([]*entity.PickingTaskLine, error)
	UpdateTaskStatus(id, status string, assignedTo *string, completedAt *time.Time) error
	// AddPicked incrementa qty_picked de la línea.
	AddPicked(lineID int64, qty int64) error
}
