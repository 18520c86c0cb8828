package task

import (
	"time"

	"golang.org/x/sys/unix"
)

// PumpWaiters checks the sleeper set against now and polls the reader
// and writer fd sets with a 200ms budget via a real select(2) syscall,
// requeuing every frame whose wait is satisfied. It is the direct
// counterpart of async.c's getTasks, translated from FD_SET/select
// into golang.org/x/sys/unix.Select, and returns the number of frames
// woken so callers can tell an empty poll from a dead scheduler.
func (s *Scheduler) PumpWaiters() (int, error) {
	woken := s.wakeSleepers()

	if len(s.readers) == 0 && len(s.writers) == 0 {
		if woken == 0 && (len(s.sleepers) > 0) {
			// No fds to wait on but sleepers remain: give the caller a
			// chance to call again after a short real sleep instead of
			// busy-spinning.
			time.Sleep(1 * time.Millisecond)
		}
		return woken, nil
	}

	var readSet, writeSet unix.FdSet
	maxFD := 0
	for _, w := range s.readers {
		fdSet(&readSet, w.fd)
		if w.fd > maxFD {
			maxFD = w.fd
		}
	}
	for _, w := range s.writers {
		fdSet(&writeSet, w.fd)
		if w.fd > maxFD {
			maxFD = w.fd
		}
	}

	timeout := unix.Timeval{Sec: 0, Usec: 200000}
	n, err := unix.Select(maxFD+1, &readSet, &writeSet, nil, &timeout)
	if err != nil {
		return woken, err
	}
	if n == 0 {
		return woken, nil
	}

	woken += s.wakeFdWaiters(&s.readers, &readSet)
	woken += s.wakeFdWaiters(&s.writers, &writeSet)
	return woken, nil
}

func (s *Scheduler) wakeSleepers() int {
	woken := 0
	remaining := s.sleepers[:0]
	now := s.now()
	for _, sl := range s.sleepers {
		if sl.wakeAt <= now {
			s.requeue(sl.frame, true)
			woken++
			continue
		}
		remaining = append(remaining, sl)
	}
	s.sleepers = remaining
	return woken
}

func (s *Scheduler) wakeFdWaiters(waiters *[]fdWaiter, set *unix.FdSet) int {
	woken := 0
	remaining := (*waiters)[:0]
	for _, w := range *waiters {
		if fdIsSet(set, w.fd) {
			s.requeue(w.frame, true)
			woken++
			continue
		}
		remaining = append(remaining, w)
	}
	*waiters = remaining
	return woken
}

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
}

func fdIsSet(set *unix.FdSet, fd int) bool {
	return set.Bits[fd/64]&(1<<(uint(fd)%64)) != 0
}
