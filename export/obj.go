package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/textmesh"
)

// WriteOBJ writes objs as Wavefront OBJ: one "o" group per object, world
// space vertices, texture coordinates and one triangle face per three
// vertices. Objects with empty meshes produce an empty group.
func WriteOBJ(w io.Writer, objs ...Object) error {
	if len(objs) == 0 {
		return ErrNoObjects
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# textmesh")

	base := 1 // OBJ indices are 1-based and global
	for i, o := range objs {
		name := objectName(o.Name, i)
		fmt.Fprintf(bw, "o %s\n", name)

		positions := o.WorldPositions()
		for _, p := range positions {
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		uvs := o.Mesh.UVs
		for j := 0; j+1 < len(uvs); j += textmesh.UVComponents {
			// OBJ texture space has v growing upward.
			fmt.Fprintf(bw, "vt %g %g\n", uvs[j], 1-uvs[j+1])
		}
		for j := 0; j+2 < len(positions); j += 3 {
			a, b, c := base+j, base+j+1, base+j+2
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		}
		base += len(positions)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: write obj: %w", err)
	}
	textmesh.Logger().Debug("export: obj written", "objects", len(objs), "vertices", base-1)
	return nil
}

// objectName makes a name safe for an OBJ "o" statement.
func objectName(name string, i int) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return fmt.Sprintf("text_%d", i)
	}
	return name
}
