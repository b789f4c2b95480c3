package lifecycle

import "testing"

func TestInitialState(t *testing.T) {
	signal := NewSignal()
	if signal.State() != StateResumed {
		t.Errorf("Начальное состояние должно быть resumed, получено: %s", signal.State())
	}
}

func TestSetNotifies(t *testing.T) {
	signal := NewSignal()

	var received []State
	signal.Subscribe(func(state State) {
		received = append(received, state)
	})

	signal.Set(StatePaused)
	signal.Set(StateResumed)

	if len(received) != 2 {
		t.Fatalf("Ожидалось 2 уведомления, получено: %d", len(received))
	}
	if received[0] != StatePaused || received[1] != StateResumed {
		t.Errorf("Неожиданная последовательность состояний: %v", received)
	}
}

func TestSetSameStateDoesNotNotify(t *testing.T) {
	signal := NewSignal()

	notifications := 0
	signal.Subscribe(func(State) {
		notifications++
	})

	signal.Set(StateResumed)

	if notifications != 0 {
		t.Errorf("Повторная установка того же состояния не должна уведомлять, уведомлений: %d", notifications)
	}
}

func TestUnsubscribe(t *testing.T) {
	signal := NewSignal()

	notifications := 0
	id := signal.Subscribe(func(State) {
		notifications++
	})

	signal.Set(StateInactive)
	signal.Unsubscribe(id)
	signal.Set(StateDetached)

	if notifications != 1 {
		t.Errorf("После отписки уведомления приходить не должны, уведомлений: %d", notifications)
	}
}
