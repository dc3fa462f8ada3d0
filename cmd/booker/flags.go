package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// shoeSizes collects repeated -shoe player=size flags.
type shoeSizes map[int]int

func (s shoeSizes) String() string {
	players := make([]int, 0, len(s))
	for player := range s {
		players = append(players, player)
	}
	sort.Ints(players)

	parts := make([]string, 0, len(players))
	for _, player := range players {
		parts = append(parts, fmt.Sprintf("%d=%d", player, s[player]))
	}

	return strings.Join(parts, ",")
}

func (s shoeSizes) Set(value string) error {
	player, size, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected player=size, got %q", value)
	}

	p, err := strconv.Atoi(strings.TrimSpace(player))
	if err != nil {
		return fmt.Errorf("invalid player %q: %w", player, err)
	}

	sz, err := strconv.Atoi(strings.TrimSpace(size))
	if err != nil {
		return fmt.Errorf("invalid shoe size %q: %w", size, err)
	}

	s[p] = sz

	return nil
}

type playerList []int

func (l *playerList) String() string {
	parts := make([]string, 0, len(*l))
	for _, player := range *l {
		parts = append(parts, strconv.Itoa(player))
	}

	return strings.Join(parts, ",")
}

func (l *playerList) Set(value string) error {
	player, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid player %q: %w", value, err)
	}

	*l = append(*l, player)

	return nil
}
