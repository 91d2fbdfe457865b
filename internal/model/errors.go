package model

import "errors"

// Ошибки item/inventory/trade операций.
//
// Все они ожидаемые исходы (полный инвентарь, чужой objectID, нехватка Kinah),
// а не исключительные ситуации. Вызывающий код сравнивает через errors.Is.
var (
	// ErrTemplateNotFound — item template отсутствует в каталоге.
	ErrTemplateNotFound = errors.New("item template not found")

	// ErrInvalidReference — objectID предмета или NPC не резолвится.
	// Может быть гонкой или попыткой эксплойта, поэтому операция тихо пропускается.
	ErrInvalidReference = errors.New("invalid object reference")

	// ErrInsufficientQuantity — запрошено больше (или меньше нуля), чем есть в стаке.
	ErrInsufficientQuantity = errors.New("insufficient item quantity")

	// ErrInsufficientFunds — не хватает Kinah.
	ErrInsufficientFunds = errors.New("insufficient kinah")

	// ErrInsufficientCapacity — нет свободного слота в cube или стак переполнится.
	ErrInsufficientCapacity = errors.New("insufficient inventory capacity")

	// ErrCapacityExhausted — инвентарь заполнился посреди многострочной выдачи.
	ErrCapacityExhausted = errors.New("inventory capacity exhausted mid-operation")

	// ErrPartialPurchase — покупка применилась частично (не все строки выданы).
	ErrPartialPurchase = errors.New("purchase partially applied")

	// ErrPersistence — хранилище недоступно. Прерывает одну транзакцию, не процесс.
	ErrPersistence = errors.New("persistence unavailable")
)
