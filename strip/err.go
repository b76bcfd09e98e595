package strip

import (
	"errors"

	"github.com/ezrec/lsvm/translate"
)

var f = translate.From

var (
	// Message errors
	ErrMessagePrefix    = errors.New(f("unknown command prefix"))
	ErrMessageTruncated = errors.New(f("truncated command"))
	ErrMessageChecksum  = errors.New(f("bad command checksum"))
)
