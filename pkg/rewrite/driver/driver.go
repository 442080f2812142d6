// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package driver iterates the bulk substitution-simplification passes of a
// rewrite system until no further rules are produced.  Neither pass reaches
// a global fixed point on its own: rules added by one sweep can expose
// simplification opportunities, or fresh concrete-type facts, for rules
// visited earlier, hence the sweeps are repeated until one adds nothing.
package driver

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/va5ve/swift/pkg/rewrite"
	"github.com/va5ve/swift/pkg/rewrite/property"
)

// Run drives the given system to its simplification fixed point, returning
// the number of sweeps performed.  Each sweep rebuilds the property map,
// applies property-aware simplification to the property rules, and then
// simplifies the substitutions of every remaining rule.  The property pass
// runs first within each sweep, since the substitution pass permanently
// marks every substitution-bearing rule it visits.  An error is returned if
// the configured iteration budget is exhausted before a sweep adds no rules.
func Run(system *rewrite.System, config Config) (uint, error) {
	for iteration := uint(0); iteration < config.MaxIterations; iteration++ {
		before := system.Len()
		//
		pm := property.NewMap(system)
		pm.SimplifyPropertyRuleSubstitutions()
		system.SimplifyLeftHandSideSubstitutions()
		//
		added := system.Len() - before
		log.Debug(fmt.Sprintf("sweep %d added %d rule(s)", iteration+1, added))
		//
		if added == 0 {
			return iteration + 1, nil
		}
	}
	//
	return config.MaxIterations, fmt.Errorf("no fixed point within %d sweeps", config.MaxIterations)
}
