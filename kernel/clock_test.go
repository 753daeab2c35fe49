package kernel

import "testing"

func TestSleepAdvancesVirtualTime(t *testing.T) {
	c := NewClock()
	var observed []float64
	c.Spawn(0, func(p *Process) {
		observed = append(observed, p.Now())
		p.Sleep(3)
		observed = append(observed, p.Now())
		p.Sleep(2)
		observed = append(observed, p.Now())
	})
	c.RunUntil(100)
	want := []float64{0, 3, 5}
	if len(observed) != len(want) {
		t.Fatalf("expected %d observations, got %v", len(want), observed)
	}
	for i := range want {
		if observed[i] != want[i] {
			t.Fatalf("observation %d: want %v got %v", i, want[i], observed[i])
		}
	}
}

func TestSameInstantEventsRunInScheduleOrder(t *testing.T) {
	c := NewClock()
	var order []int
	c.Spawn(0, func(p *Process) {
		p.Sleep(1)
		order = append(order, 1)
	})
	c.Spawn(0, func(p *Process) {
		p.Sleep(1)
		order = append(order, 2)
	})
	c.Spawn(0, func(p *Process) {
		p.Sleep(1)
		order = append(order, 3)
	})
	c.RunUntil(10)
	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected FIFO schedule order %v, got %v", want, order)
		}
	}
}

func TestRunUntilAbandonsProcessesBeyondLimit(t *testing.T) {
	c := NewClock()
	reached := false
	c.Spawn(0, func(p *Process) {
		p.Sleep(5)
		reached = true
	})
	c.RunUntil(3)
	if reached {
		t.Fatalf("process should not resume past the run limit")
	}
}

func TestSpawnDuringATurnDoesNotCedeControl(t *testing.T) {
	c := NewClock()
	var order []string
	c.Spawn(0, func(p *Process) {
		order = append(order, "parent-start")
		p.Clock().Spawn(p.Now(), func(child *Process) {
			order = append(order, "child")
		})
		order = append(order, "parent-end")
	})
	c.RunUntil(10)
	want := []string{"parent-start", "parent-end", "child"}
	for i := range want {
		if i >= len(order) || order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}
