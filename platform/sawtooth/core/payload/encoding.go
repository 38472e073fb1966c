/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package payload

import (
	"strings"

	"github.com/hyperledger-labs/voting-client/pkg/utils/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Encoding turns a payload into the bytes carried by a transaction.
type Encoding interface {
	Name() string
	Encode(p Payload) ([]byte, error)
}

const (
	CSVEncoding    = "csv"
	TaggedEncoding = "tagged"
)

// ByName returns the encoding registered under name.
func ByName(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "", CSVEncoding:
		return CSV{}, nil
	case TaggedEncoding:
		return Tagged{}, nil
	default:
		return nil, errors.Errorf("unknown payload encoding [%s]", name)
	}
}

// CSV joins action and arguments with commas: "<action>,<arg1>[,<arg2>]".
// Arguments are not escaped; an argument containing a comma changes the
// meaning of the payload and is the caller's responsibility.
type CSV struct{}

func (CSV) Name() string { return CSVEncoding }

func (CSV) Encode(p Payload) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil payload")
	}
	parts := append([]string{p.Action()}, p.Arguments()...)
	return []byte(strings.Join(parts, ",")), nil
}

// Tagged encodes the action as field 1 and each argument, in order, as a
// repeated field 2 of a protobuf message. Every value is length prefixed so
// no delimiter can be confused with data.
type Tagged struct{}

const (
	actionField   protowire.Number = 1
	argumentField protowire.Number = 2
)

func (Tagged) Name() string { return TaggedEncoding }

func (Tagged) Encode(p Payload) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil payload")
	}
	if p.Action() == "" {
		return nil, errors.New("payload action is empty")
	}
	var b []byte
	b = protowire.AppendTag(b, actionField, protowire.BytesType)
	b = protowire.AppendString(b, p.Action())
	for _, arg := range p.Arguments() {
		b = protowire.AppendTag(b, argumentField, protowire.BytesType)
		b = protowire.AppendString(b, arg)
	}
	return b, nil
}

// Decode parses bytes produced by Tagged.Encode.
func (Tagged) Decode(raw []byte) (action string, args []string, err error) {
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return "", nil, errors.Wrapf(protowire.ParseError(n), "invalid tag")
		}
		raw = raw[n:]
		if typ != protowire.BytesType {
			return "", nil, errors.Errorf("unexpected wire type [%d] for field [%d]", typ, num)
		}
		v, n := protowire.ConsumeString(raw)
		if n < 0 {
			return "", nil, errors.Wrapf(protowire.ParseError(n), "invalid value for field [%d]", num)
		}
		raw = raw[n:]
		switch num {
		case actionField:
			action = v
		case argumentField:
			args = append(args, v)
		default:
			return "", nil, errors.Errorf("unknown field [%d]", num)
		}
	}
	if action == "" {
		return "", nil, errors.New("missing action")
	}
	return action, args, nil
}
