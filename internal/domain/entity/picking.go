package entity

import "time"

// Estados de una tarea de picking.
const (
	PickingStatusOpen       = "OPEN"
	PickingStatusInProgress = "IN_PROGRESS"
	PickingStatusDone       = "DONE"
)

// PickingTask agrupa las líneas de picking de una orden de salida.
// Se genera una sola vez por orden (idempotente).
type PickingTask struct {
	ID             string
	OutboundID     string
	AssignedUserID *string
	Status         string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}

// PickingTaskLine es una instrucción de picking: qué producto/lote tomar
// de qué ubicación y cuánto. La línea es terminal cuando QtyPicked
// iguala a QtyToPick.
type PickingTaskLine struct {
	ID             int64
	PickingTaskID  string
	ProductID      string
	BatchID        *string
	FromLocationID string
	QtyToPick      int64
	QtyPicked      int64
}

// Done indica si la línea ya se completó.
func (l PickingTaskLine) Done() bool { return l.QtyPicked >= l.QtyToPick }
