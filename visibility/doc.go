// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package visibility filters question state per viewer before transmission.

ProjectQuestion implements the result-visibility gate:

  - the creator always sees per-choice counts and voter rosters
  - everyone else sees them only while show_results is on
  - otherwise a viewer gets choice text plus their own vote, nothing more

Counts are recomputed from the vote rows on every projection; there is no
stored counter to drift.
*/
package visibility
