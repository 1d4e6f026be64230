package live

import (
	"fmt"

	"github.com/matzehuels/isotower/pkg/fonts"
	"github.com/matzehuels/isotower/pkg/render/sceneview"
	"github.com/matzehuels/isotower/pkg/render/vector"
)

var liveCSS = fmt.Sprintf(`
    .iso-tier { transition: transform 0.45s cubic-bezier(0.2, 0.8, 0.2, 1), opacity 0.45s ease; transform-box: fill-box; transform-origin: center; }
    .iso-tier.entering { pointer-events: none; }
    .iso-tier.hovered { filter: url(#%s); }
    .iso-tier.dimmed { opacity: %.2f; }
    %s`, sceneview.GlowFilterID, DimOpacity, fonts.CSS("iso-diagram"))

// liveJS replays the entrance and wires the tier hooks in a browser. The
// document is a snapshot, so tiers that have not entered yet are released
// on the same schedule the Diagram uses.
const liveJS = `
    (function () {
      var svg = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg.iso-diagram');
      if (!svg) return;
      var step = Number(svg.dataset.step || 120), base = Number(svg.dataset.base || 80);
      var tiers = Array.prototype.slice.call(svg.querySelectorAll('g.iso-tier'));
      var rest = {};
      tiers.forEach(function (g) {
        rest[g.dataset.tier] = g.getAttribute('transform') || '';
        if (g.classList.contains('entering')) {
          setTimeout(function () {
            g.classList.remove('entering');
            g.removeAttribute('transform');
            g.removeAttribute('opacity');
            rest[g.dataset.tier] = '';
          }, Number(g.dataset.tier) * step + base);
        }
      });
      function hover(target) {
        tiers.forEach(function (g) {
          var on = g === target;
          g.classList.toggle('hovered', on);
          g.classList.toggle('dimmed', target !== null && !on);
          if (on) {
            g.setAttribute('transform', g.dataset.hover);
          } else if (rest[g.dataset.tier]) {
            g.setAttribute('transform', rest[g.dataset.tier]);
          } else {
            g.removeAttribute('transform');
          }
        });
      }
      tiers.forEach(function (g) {
        if (!g.dataset.onenter) return;
        g.addEventListener('mouseenter', function () { hover(g); });
        g.addEventListener('mouseleave', function () { hover(null); });
      });
    })();`

// Markup returns the serialized live document of the current state with
// its transitions and pointer hooks, or nil when nothing was ever mounted.
func (d *Diagram) Markup() []byte {
	root := d.Tree()
	if root == nil {
		return nil
	}
	s := d.Scene()
	root.Set("data-step", fmt.Sprint(d.step.Milliseconds()))
	root.Set("data-base", fmt.Sprint(d.base.Milliseconds()))
	for _, g := range root.Find(isTierGroup) {
		idx, _ := g.Get("data-tier")
		for _, t := range s.Tiers {
			if fmt.Sprint(t.Index) == idx {
				g.Set("data-hover", sceneview.Transform(t, hoverStyle))
			}
		}
	}
	root.Append(
		&vector.Element{Name: "style", Raw: liveCSS + "\n  "},
		&vector.Element{
			Name:  "script",
			Attrs: []vector.Attr{{Key: "type", Value: "text/javascript"}},
			Raw:   liveJS + "\n  ",
		},
	)
	return root.Bytes()
}

func isTierGroup(e *vector.Element) bool {
	_, ok := e.Get("data-tier")
	return ok && e.Name == "g"
}
