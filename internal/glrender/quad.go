package glrender

// quadVertices covers clip space with two triangles.
var quadVertices = []float32{
	-1.0, -1.0, 1.0, -1.0, -1.0, 1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

const quadVertexCount = 6

type quad struct {
	dev Device
	vbo Buffer
}

func newQuad(dev Device, position int32) *quad {
	q := &quad{dev: dev, vbo: dev.NewVertexBuffer(quadVertices)}
	dev.BindVertexBuffer(q.vbo, position, 2)
	return q
}

func (q *quad) draw() {
	q.dev.DrawTriangles(quadVertexCount)
}

func (q *quad) release() {
	if q.vbo != 0 {
		q.dev.DeleteBuffer(q.vbo)
		q.vbo = 0
	}
}
