// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package spsc

import "testing"

func TestNewPanicsOnNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d) did not panic", c)
				}
			}()
			New[int](c)
		}()
	}
}

func TestFIFOOrder(t *testing.T) {
	q := New[int](4)
	for i := 1; i <= 4; i++ {
		if !q.TryPush(i) {
			t.Fatalf("TryPush(%d) failed unexpectedly", i)
		}
	}
	if !q.Full() {
		t.Fatal("expected queue to be full")
	}
	if q.TryPush(5) {
		t.Fatal("TryPush succeeded on a full queue")
	}

	for i := 1; i <= 4; i++ {
		v, ok := q.TryPop()
		if !ok || v != i {
			t.Fatalf("TryPop() = %d, %v; want %d, true", v, ok, i)
		}
	}
	if !q.Empty() {
		t.Fatal("expected queue to be empty")
	}
	if _, ok := q.TryPop(); ok {
		t.Fatal("TryPop succeeded on an empty queue")
	}
}

func TestInterleavedPushPop(t *testing.T) {
	q := New[byte](3)
	q.TryPush(1)
	q.TryPush(2)
	if v, _ := q.TryPop(); v != 1 {
		t.Fatalf("got %d, want 1", v)
	}
	q.TryPush(3)
	q.TryPush(4)
	if !q.Full() {
		t.Fatal("expected full after wraparound push")
	}
	want := []byte{2, 3, 4}
	for _, w := range want {
		v, ok := q.TryPop()
		if !ok || v != w {
			t.Fatalf("got %d, %v; want %d, true", v, ok, w)
		}
	}
}
