package metric

import (
	"strings"

	"github.com/build-flow-labs/rely/internal/rely/repo"
)

type hasDescription struct{ snap *repo.Snapshot }

func newHasDescription(s *repo.Snapshot) Metric { return hasDescription{s} }

func (m hasDescription) present() bool {
	return strings.TrimSpace(m.snap.Metadata().Description) != ""
}
func (m hasDescription) Value() Value { return BoolValue(m.present()) }
func (m hasDescription) Score() Score { return flag(m.present(), true) }

type hasLicense struct{ snap *repo.Snapshot }

func newHasLicense(s *repo.Snapshot) Metric { return hasLicense{s} }

func (m hasLicense) Value() Value { return BoolValue(m.snap.Metadata().HasLicense) }
func (m hasLicense) Score() Score { return flag(m.snap.Metadata().HasLicense, true) }

type isArchived struct{ snap *repo.Snapshot }

func newIsArchived(s *repo.Snapshot) Metric { return isArchived{s} }

func (m isArchived) Value() Value { return BoolValue(m.snap.Metadata().Archived) }
func (m isArchived) Score() Score { return flag(m.snap.Metadata().Archived, false) }

type isDisabled struct{ snap *repo.Snapshot }

func newIsDisabled(s *repo.Snapshot) Metric { return isDisabled{s} }

func (m isDisabled) Value() Value { return BoolValue(m.snap.Metadata().Disabled) }
func (m isDisabled) Score() Score { return flag(m.snap.Metadata().Disabled, false) }
