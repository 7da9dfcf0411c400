// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-hybrid-sync/internal/config"
	"github.com/MKhiriev/go-hybrid-sync/models"
)

// lastWriterWins is the default ConflictPolicy.
//
// Rules, first match wins:
//
//   - both sides carry the same state: nothing to do;
//   - a local delete beats a cloud update (when localDeleteWins is set);
//   - the later timestamp wins;
//   - equal timestamps go to tieBreak.
type lastWriterWins struct {
	localDeleteWins bool
	tieBreak        models.Origin
}

// NewConflictPolicy builds the last-writer-wins policy from the sync config.
// An empty or unknown tie break selects the cloud.
func NewConflictPolicy(cfg config.NodeSync) ConflictPolicy {
	tieBreak := models.Origin(cfg.TieBreak)
	if !tieBreak.Valid() {
		tieBreak = models.OriginCloud
	}
	return &lastWriterWins{
		localDeleteWins: cfg.LocalDeleteWins,
		tieBreak:        tieBreak,
	}
}

func (p *lastWriterWins) Resolve(local, cloud models.ChangeEntry) models.ConflictResolution {
	res := models.ConflictResolution{
		Table:          local.Table,
		RecordID:       local.RecordID,
		LocalRevision:  local.Revision,
		CloudRevision:  cloud.Revision,
		LocalOperation: local.Operation,
		CloudOperation: cloud.Operation,
		LocalTimestamp: local.Timestamp,
		CloudTimestamp: cloud.Timestamp,
	}

	switch {
	case sameState(local, cloud):
		res.Winner = models.OriginCloud
		res.Rule = models.ConflictRuleIdenticalChange
	case p.localDeleteWins && local.IsDelete() && !cloud.IsDelete():
		res.Winner = models.OriginLocal
		res.Rule = models.ConflictRuleLocalDelete
	case local.Timestamp.After(cloud.Timestamp):
		res.Winner = models.OriginLocal
		res.Rule = models.ConflictRuleLastWriterWins
	case cloud.Timestamp.After(local.Timestamp):
		res.Winner = models.OriginCloud
		res.Rule = models.ConflictRuleLastWriterWins
	default:
		res.Winner = p.tieBreak
		res.Rule = models.ConflictRuleTieBreak
	}

	return res
}

// sameState reports whether two entries leave a record in the same state.
func sameState(a, b models.ChangeEntry) bool {
	if a.IsDelete() || b.IsDelete() {
		return a.IsDelete() && b.IsDelete()
	}
	return a.Checksum != "" && a.Checksum == b.Checksum
}
