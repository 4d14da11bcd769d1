package handlers

import "strings"

// LakeAliases переводит устаревшие ID озёр ("bignor", "wood") в канонические
// Движок бронирований видит только канонические ID
type LakeAliases struct {
	aliases map[string]string
}

func NewLakeAliases(aliases map[string]string) *LakeAliases {
	m := make(map[string]string, len(aliases))
	for legacy, canonical := range aliases {
		m[strings.ToLower(legacy)] = canonical
	}
	return &LakeAliases{aliases: m}
}

// Canonical возвращает канонический ID; неизвестный ID возвращается как есть
func (a *LakeAliases) Canonical(id string) string {
	id = strings.TrimSpace(id)
	if a == nil {
		return id
	}
	if canonical, ok := a.aliases[strings.ToLower(id)]; ok {
		return canonical
	}
	return id
}
