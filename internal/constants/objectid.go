package constants

// Object ID ranges.
//
//	0x00000000:              invalid
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: NPCs
//	0x30000000 - 0x3FFFFFFF: Items (IDFactory, переиспользуются после release)
const (
	ObjectIDPlayerStart uint32 = 0x10000000
	ObjectIDPlayerEnd   uint32 = 0x1FFFFFFF
	ObjectIDNpcStart    uint32 = 0x20000000
	ObjectIDNpcEnd      uint32 = 0x2FFFFFFF
	ObjectIDItemStart   uint32 = 0x30000000
	ObjectIDItemEnd     uint32 = 0x3FFFFFFF
)

// KinahItemID — template ID валюты (Kinah).
const KinahItemID int32 = 182400001

// IsPlayerObjectID returns true if objectID is in Player range.
func IsPlayerObjectID(objectID uint32) bool {
	return objectID >= ObjectIDPlayerStart && objectID <= ObjectIDPlayerEnd
}

// IsNpcObjectID returns true if objectID is in NPC range.
func IsNpcObjectID(objectID uint32) bool {
	return objectID >= ObjectIDNpcStart && objectID <= ObjectIDNpcEnd
}

// IsItemObjectID returns true if objectID is in Item range.
func IsItemObjectID(objectID uint32) bool {
	return objectID >= ObjectIDItemStart && objectID <= ObjectIDItemEnd
}
