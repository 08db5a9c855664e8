// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package gas

import (
	"fmt"

	"github.com/lumen-chain/lumen/go/lumen"
)

const ErrOutOfGas = lumen.ConstError("out of gas")

// Meter tracks the gas consumed by a transaction against its limit. A
// limit of zero disables the limit.
type Meter struct {
	limit lumen.Gas
	used  lumen.Gas
}

func NewMeter(limit lumen.Gas) *Meter {
	return &Meter{limit: limit}
}

// Charge consumes the given amount. If the limit would be exceeded the
// meter is exhausted and ErrOutOfGas is returned.
func (m *Meter) Charge(amount lumen.Gas) error {
	if amount < 0 {
		return fmt.Errorf("invalid gas amount %d", amount)
	}
	if m.limit > 0 && amount > m.limit-m.used {
		err := fmt.Errorf("%w: limit %d, used %d, requested %d", ErrOutOfGas, m.limit, m.used, amount)
		m.used = m.limit
		return err
	}
	m.used += amount
	return nil
}

func (m *Meter) Used() lumen.Gas {
	return m.used
}

// Remaining returns the gas left, or -1 if the meter is unlimited.
func (m *Meter) Remaining() lumen.Gas {
	if m.limit == 0 {
		return -1
	}
	return m.limit - m.used
}
