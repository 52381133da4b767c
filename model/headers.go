package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Names of the headers the tool interprets. Everything else is carried
// through opaquely.
const (
	HeaderTitle    = "TITLE"
	HeaderGap      = "GAP"
	HeaderBPM      = "BPM"
	HeaderRelative = "RELATIVE"
)

// Headers is a chart's header block. Insertion order is preserved because the
// serialized file must list headers exactly as they arrived; order is part of
// the output contract.
type Headers struct {
	keys   []string
	values map[string]string
}

func NewHeaders() *Headers {
	return &Headers{values: make(map[string]string)}
}

func (h *Headers) Get(key string) (string, bool) {
	v, ok := h.values[key]
	return v, ok
}

func (h *Headers) Has(key string) bool {
	_, ok := h.values[key]
	return ok
}

// Set stores value under key. An existing key keeps its position; a new key
// is appended after all current ones.
func (h *Headers) Set(key, value string) {
	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.values[key] = value
}

// Keys returns the header names in insertion order. The returned slice is
// shared; callers must not modify it.
func (h *Headers) Keys() []string {
	return h.keys
}

func (h *Headers) Len() int {
	return len(h.keys)
}

// Float reads a numeric header. The format writes decimals with either "," or
// "." as the separator; both parse here. A missing header yields def.
func (h *Headers) Float(key string, def float64) (float64, error) {
	raw, ok := h.values[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil {
		return 0, errors.Errorf("header %s: %q is not a number", key, raw)
	}
	return v, nil
}

// SetFloat stores v in the canonical file shape: comma separator, at most 8
// fractional digits, trailing zeros and a dangling separator stripped.
func (h *Headers) SetFloat(key string, v float64) {
	h.Set(key, formatDecimal(v))
}

// formatDecimal is deliberately not strconv's default shortest form: fixed
// 8-digit formatting guarantees scientific notation never reaches a file.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return strings.ReplaceAll(s, ".", ",")
}
