package state

import "github.com/Freeeeeet/vmk_schedule_bot/internal/model"

// UserData - закэшированный шаг диалога пользователя
type UserData struct {
	State model.StudentState
	Group string
}
