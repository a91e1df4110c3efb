package pool

import "errors"

var ErrZeroWorkers = errors.New("cannot create a Pool with 0 workers")
var ErrPoolClosed = errors.New("cannot call Submit on a closed Pool")
var ErrNoWorkers = errors.New("cannot call Submit on a Pool with no live workers")
var ErrNilJob = errors.New("cannot submit a nil Job")
