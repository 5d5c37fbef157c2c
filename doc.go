// Package snapsheet is a draggable multi-state bottom sheet engine for
// [Ebitengine] games and apps.
//
// A sheet rests at one of a few discrete height tiers (Collapsed, Mid, Full)
// and moves between them by drag, double tap, or host command. snapsheet
// owns the interaction logic only: gesture tracking, the snap-state machine,
// spring or eased height animation, content routing between a discover list
// and a partner carousel, and the carousel's paging. Drawing is up to the
// host.
//
// # Quick start
//
//	sheet, err := snapsheet.New(snapsheet.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	sheet.SetViewport(390, 844)
//	sheet.SetItems(offers)
//	sheet.OnClose(func() { showMap() })
//	sheet.Open(snapsheet.OpenOptions{})
//
//	input := snapsheet.NewPointerInput(sheet)
//
//	// Each frame:
//	input.Update()
//	sheet.Update(1.0 / float64(ebiten.TPS()))
//	rect := sheet.SheetRect() // draw the sheet here
//
// # Data flow
//
// Pointer events go to a [GestureTracker], which produces one [DragSample]
// per gesture. The [SnapMachine] maps the current [State] plus that sample
// to the next state, moving at most one tier per gesture. The
// [HeightAnimator] retargets toward the new tier (a gesture that starts
// mid-animation takes over immediately), and the [ContentRouter] decides
// which child content to show. A [Carousel] pages horizontally inside the
// sheet and reports its centered item through a debounced callback, which
// a [MapView] can follow.
//
// # Thresholds
//
// All drag policy constants live in [Config] and can be loaded from YAML
// with [LoadConfig]. [TwoTierConfig] and [ThreeTierConfig] provide the two
// stock layouts.
//
// # Sessions
//
// Every open-to-close lifetime is a session with its own ID and a
// [context.Context] that is canceled when the sheet closes. Pass
// [Sheet.Context] to async work started for the sheet's content, or check
// [Sheet.IsCurrent] before applying a late result.
//
// [Ebitengine]: https://ebitengine.org
package snapsheet
