package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
	"sync"

	"github.com/udisondev/aiongo/internal/constants"
)

var (
	// ErrIDsExhausted — в диапазоне не осталось свободных ID.
	ErrIDsExhausted = errors.New("object ids exhausted")
	// ErrIDOutOfRange — ID вне диапазона фабрики.
	ErrIDOutOfRange = errors.New("object id out of range")
	// ErrIDNotInUse — release ID, который не выдан (double release).
	ErrIDNotInUse = errors.New("object id not in use")
	// ErrIDInUse — LockIDs для уже занятого ID.
	ErrIDInUse = errors.New("object id already in use")
)

// IDFactory — bitset allocator item object ID.
//
// Освобождённый ID снова выдаётся только после того, как указатель next
// обойдёт весь диапазон: это отодвигает переиспользование и ловит
// устаревшие ссылки на удалённые предметы.
type IDFactory struct {
	start uint32
	size  uint32

	used  []uint64
	count uint32
	next  uint32 // offset от start

	mu sync.Mutex
}

// NewIDFactory создаёт фабрику для диапазона [start, end].
func NewIDFactory(start, end uint32) (*IDFactory, error) {
	if start == 0 || end < start {
		return nil, fmt.Errorf("invalid id range [%d, %d]", start, end)
	}
	size := end - start + 1
	return &IDFactory{
		start: start,
		size:  size,
		used:  make([]uint64, (uint64(size)+63)/64),
	}, nil
}

// NewItemIDFactory создаёт фабрику для стандартного диапазона item ID.
func NewItemIDFactory() *IDFactory {
	f, _ := NewIDFactory(constants.ObjectIDItemStart, constants.ObjectIDItemEnd)
	return f
}

// NextID выдаёт свободный ID.
func (f *IDFactory) NextID() (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.count == f.size {
		return 0, ErrIDsExhausted
	}

	off, ok := f.findFree(f.next)
	if !ok {
		off, ok = f.findFree(0)
	}
	if !ok {
		return 0, ErrIDsExhausted
	}

	f.set(off)
	f.count++
	f.next = off + 1
	if f.next >= f.size {
		f.next = 0
	}
	return f.start + off, nil
}

// ReleaseID возвращает ID в пул. Повторный release считается ошибкой вызывающего.
func (f *IDFactory) ReleaseID(id uint32) error {
	off, err := f.offset(id)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.isSet(off) {
		slog.Warn("CHECKPOINT: release of unused object id", "objectID", id)
		return fmt.Errorf("releasing %d: %w", id, ErrIDNotInUse)
	}
	f.clear(off)
	f.count--
	return nil
}

// LockIDs помечает занятыми ID, уже сохранённые в БД.
// Вызывается на старте до первого NextID.
func (f *IDFactory) LockIDs(ids []uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range ids {
		off, err := f.offset(id)
		if err != nil {
			return err
		}
		if f.isSet(off) {
			return fmt.Errorf("locking %d: %w", id, ErrIDInUse)
		}
		f.set(off)
		f.count++
	}
	return nil
}

// UsedCount возвращает количество выданных ID.
func (f *IDFactory) UsedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(f.count)
}

// IsUsed returns true если ID сейчас выдан.
func (f *IDFactory) IsUsed(id uint32) bool {
	off, err := f.offset(id)
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isSet(off)
}

func (f *IDFactory) offset(id uint32) (uint32, error) {
	if id < f.start || id-f.start >= f.size {
		return 0, fmt.Errorf("id %d: %w", id, ErrIDOutOfRange)
	}
	return id - f.start, nil
}

// findFree ищет первый свободный бит начиная с from. Вызывается под f.mu.
func (f *IDFactory) findFree(from uint32) (uint32, bool) {
	for w := from / 64; w < uint32(len(f.used)); w++ {
		word := f.used[w]
		if w == from/64 {
			word |= (1 << (from % 64)) - 1 // биты до from считаем занятыми
		}
		if word == ^uint64(0) {
			continue
		}
		off := w*64 + uint32(bits.TrailingZeros64(^word))
		if off >= f.size {
			return 0, false
		}
		return off, true
	}
	return 0, false
}

func (f *IDFactory) isSet(off uint32) bool { return f.used[off/64]&(1<<(off%64)) != 0 }
func (f *IDFactory) set(off uint32)        { f.used[off/64] |= 1 << (off % 64) }
func (f *IDFactory) clear(off uint32)      { f.used[off/64] &^= 1 << (off % 64) }
