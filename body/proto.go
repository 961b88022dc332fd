package body

import "google.golang.org/protobuf/proto"

// Proto decodes protobuf bodies into a concrete message type. Protobuf
// carries no self-describing schema, so the decoder needs a constructor for
// the expected message (e.g. func() *mypb.User { return &mypb.User{} }).
type Proto[T proto.Message] struct {
	new func() T
}

func NewProto[T proto.Message](ctor func() T) Proto[T] {
	return Proto[T]{new: ctor}
}

func (p Proto[T]) Decode(b []byte) (any, error) {
	m := p.new()
	if err := proto.Unmarshal(b, m); err != nil {
		return nil, err
	}
	return m, nil
}
