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

//go:generate mockgen -destination=mock_ports.go -package=ports github.com/carverauto/pfchistoryd/pkg/ports Inventory

// Package ports resolves interface names to switch ports.
package ports

import "github.com/carverauto/pfchistoryd/pkg/sai"

// Type is the kind of a port entity.
type Type int

const (
	Unknown Type = iota
	Phy
	Lag
	CPU
	Vlan
)

func (t Type) String() string {
	switch t {
	case Phy:
		return "PHY"
	case Lag:
		return "LAG"
	case CPU:
		return "CPU"
	case Vlan:
		return "VLAN"
	default:
		return "UNKNOWN"
	}
}

// Port is a resolved port entity.
type Port struct {
	Name string
	Type Type
	ID   sai.ObjectID
}

// Inventory answers port lookups for the task loop.
type Inventory interface {
	// AllPortsReady reports whether port identities can be resolved yet.
	AllPortsReady() bool
	GetPort(name string) (Port, bool)
}
