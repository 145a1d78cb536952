/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package sai holds the switch-abstraction identifiers pfchistoryd passes through
// to the counter polling engine, and their canonical string forms.
package sai

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const objectIDPrefix = "oid:0x"

var errInvalidObjectID = errors.New("invalid object id")

// ObjectID is a switch-level object identifier.
type ObjectID uint64

// NullObjectID is never assigned to a real object.
const NullObjectID ObjectID = 0

// String serializes the id as "oid:0x<lowercase hex>".
func (o ObjectID) String() string {
	return objectIDPrefix + strconv.FormatUint(uint64(o), 16)
}

// ParseObjectID is the inverse of ObjectID.String.
func ParseObjectID(s string) (ObjectID, error) {
	if !strings.HasPrefix(s, objectIDPrefix) {
		return NullObjectID, fmt.Errorf("%w: %q", errInvalidObjectID, s)
	}

	v, err := strconv.ParseUint(strings.TrimPrefix(s, objectIDPrefix), 16, 64)
	if err != nil {
		return NullObjectID, fmt.Errorf("%w: %q: %w", errInvalidObjectID, s, err)
	}

	return ObjectID(v), nil
}

// PortStat is a port counter kind.
type PortStat string

const (
	PortStatPFC0RxPkts PortStat = "SAI_PORT_STAT_PFC_0_RX_PKTS"
	PortStatPFC1RxPkts PortStat = "SAI_PORT_STAT_PFC_1_RX_PKTS"
	PortStatPFC2RxPkts PortStat = "SAI_PORT_STAT_PFC_2_RX_PKTS"
	PortStatPFC3RxPkts PortStat = "SAI_PORT_STAT_PFC_3_RX_PKTS"
	PortStatPFC4RxPkts PortStat = "SAI_PORT_STAT_PFC_4_RX_PKTS"
	PortStatPFC5RxPkts PortStat = "SAI_PORT_STAT_PFC_5_RX_PKTS"
	PortStatPFC6RxPkts PortStat = "SAI_PORT_STAT_PFC_6_RX_PKTS"
	PortStatPFC7RxPkts PortStat = "SAI_PORT_STAT_PFC_7_RX_PKTS"
)

// PortStatList is an ordered list of counter kinds. Order is significant.
type PortStatList []PortStat

// PFCRxPktsStats returns the eight priority-indexed receive-pause counters in
// priority order.
func PFCRxPktsStats() PortStatList {
	return PortStatList{
		PortStatPFC0RxPkts,
		PortStatPFC1RxPkts,
		PortStatPFC2RxPkts,
		PortStatPFC3RxPkts,
		PortStatPFC4RxPkts,
		PortStatPFC5RxPkts,
		PortStatPFC6RxPkts,
		PortStatPFC7RxPkts,
	}
}

// String joins the counter names with "," in declared order. An empty list yields "".
func (l PortStatList) String() string {
	return strings.Join(lo.Map(l, func(s PortStat, _ int) string {
		return string(s)
	}), ",")
}
