package resource

import (
	"strings"

	"PowerLine/internal/game/rules"
)

type Kind string

const (
	Coal    Kind = "COAL"
	Oil     Kind = "OIL"
	BioMass Kind = "BIO_MASS"
	Uranium Kind = "URANIUM"
)

// Kinds 是固定的遍历顺序，分配、补货等逐种处理时都按这个顺序。
var Kinds = []Kind{Coal, Oil, BioMass, Uranium}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", rules.Violate(rules.ReasonUnknownKind, s)
}

func (k Kind) String() string {
	return string(k)
}
