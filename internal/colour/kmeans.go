package colour

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand"

	xdraw "golang.org/x/image/draw"
)

// ErrInvalidInput is returned when an extraction request cannot be
// satisfied: a requested palette size below one, or an image with no
// pixels to cluster.
var ErrInvalidInput = errors.New("invalid extraction input")

const (
	// thumbnailMax bounds the largest image dimension before clustering.
	// Downscaling bounds clustering cost without materially changing the
	// dominant-colour result.
	thumbnailMax = 200

	// DefaultMinDiff is the default convergence threshold, in YUV-space
	// distance units.
	DefaultMinDiff = 1.0

	// DefaultMaxIterations is the safety bound on clustering iterations.
	// Hitting the bound is treated as a best-effort result, not an error.
	DefaultMaxIterations = 100
)

// point is a pixel colour projected into YUV space, weighted by how
// many pixels in the source image share that exact RGB value.
type point struct {
	coords [3]float64
	count  int
}

// cluster holds the points currently assigned to one centroid.
type cluster struct {
	center point
	points []point
}

// ExtractOptions configures palette extraction. The zero value selects
// the defaults; Rand must be supplied by the caller so clustering is
// deterministic under test.
type ExtractOptions struct {
	MinDiff       float64
	MaxIterations int
	Rand          *rand.Rand
}

func (o ExtractOptions) withDefaults() ExtractOptions {
	if o.MinDiff <= 0 {
		o.MinDiff = DefaultMinDiff
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	return o
}

// InferPalette extracts the k dominant colours of an image by weighted
// k-means clustering in YUV space and returns them in #rrggbb notation.
// The result order follows cluster index order and carries no meaning.
// Duplicate entries are possible when clusters collapse onto the same
// colour; the palette never has more than k entries.
func InferPalette(img image.Image, k int, opts ExtractOptions) ([]string, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", ErrInvalidInput)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: palette size must be at least 1, got %d", ErrInvalidInput, k)
	}
	opts = opts.withDefaults()

	points := imagePoints(thumbnail(img, thumbnailMax))
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidInput)
	}

	centers := kmeans(points, k, opts)

	palette := make([]string, len(centers))
	for i, c := range centers {
		palette[i] = YUVToHex(c.coords[0], c.coords[1], c.coords[2])
	}
	return palette, nil
}

// thumbnail scales the image so its largest dimension is at most max
// pixels, preserving aspect ratio. Images already within the bound are
// returned unchanged.
func thumbnail(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return img
	}

	scale := float64(max) / float64(w)
	if h > w {
		scale = float64(max) / float64(h)
	}
	tw := int(math.Round(float64(w) * scale))
	th := int(math.Round(float64(h) * scale))
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}

// imagePoints builds the working point set: one weighted YUV point per
// distinct RGB value present in the image.
func imagePoints(img image.Image) []point {
	bounds := img.Bounds()
	counts := make(map[RGB]int)
	order := make([]RGB, 0, 256)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rgb := RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
			if counts[rgb] == 0 {
				order = append(order, rgb)
			}
			counts[rgb]++
		}
	}

	points := make([]point, len(order))
	for i, rgb := range order {
		y, u, v := RGBToYUV(rgb.R, rgb.G, rgb.B)
		points[i] = point{coords: [3]float64{y, u, v}, count: counts[rgb]}
	}
	return points
}

// euclidean is the straight-line distance between two points in YUV space.
func euclidean(a, b point) float64 {
	var sum float64
	for i := range a.coords {
		d := a.coords[i] - b.coords[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// weightedCenter computes the count-weighted mean of a point set. An
// empty set returns ok=false so the caller can keep the prior centroid.
func weightedCenter(points []point) (point, bool) {
	if len(points) == 0 {
		return point{}, false
	}
	var vals [3]float64
	total := 0
	for _, p := range points {
		total += p.count
		for i := range vals {
			vals[i] += p.coords[i] * float64(p.count)
		}
	}
	for i := range vals {
		vals[i] /= float64(total)
	}
	return point{coords: vals, count: 1}, true
}

// seedClusters picks k starting centroids. When at least k distinct
// points exist they are sampled uniformly without replacement; with
// fewer distinct colours than k, every point is used once and the
// remainder is filled round-robin, which keeps degenerate inputs
// deterministic given the supplied source.
func seedClusters(points []point, k int, rng *rand.Rand) []cluster {
	clusters := make([]cluster, 0, k)
	if len(points) >= k {
		for _, idx := range rng.Perm(len(points))[:k] {
			clusters = append(clusters, cluster{center: points[idx]})
		}
		return clusters
	}
	for i := 0; i < k; i++ {
		clusters = append(clusters, cluster{center: points[i%len(points)]})
	}
	return clusters
}

// kmeans iterates assignment and centroid recomputation until the
// maximum centroid displacement drops below MinDiff, or the iteration
// bound is reached.
func kmeans(points []point, k int, opts ExtractOptions) []point {
	clusters := seedClusters(points, k, opts.Rand)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		assigned := make([][]point, k)
		for _, p := range points {
			best := 0
			bestDist := math.Inf(1)
			for i := range clusters {
				// Strict less-than keeps ties on the lower index.
				if d := euclidean(p, clusters[i].center); d < bestDist {
					bestDist = d
					best = i
				}
			}
			assigned[best] = append(assigned[best], p)
		}

		maxShift := 0.0
		for i := range clusters {
			center, ok := weightedCenter(assigned[i])
			if !ok {
				// Empty cluster keeps its previous centroid.
				clusters[i].points = nil
				continue
			}
			if shift := euclidean(clusters[i].center, center); shift > maxShift {
				maxShift = shift
			}
			clusters[i] = cluster{center: center, points: assigned[i]}
		}

		if maxShift < opts.MinDiff {
			break
		}
	}

	centers := make([]point, len(clusters))
	for i, c := range clusters {
		centers[i] = c.center
	}
	return centers
}
