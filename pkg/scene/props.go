package scene

// TrackedProperties flattens everything the compiler reads from a source
// node into a typed property map: primitive parameters, interaction-mode
// parameters, shell and array parameters. Nothing cosmetic (names, colors)
// is included, so snapshot comparison only reacts to changes that affect
// the compiled tree. The field list per kind is explicit and closed.
func (d SourceData) TrackedProperties() map[string]any {
	p := map[string]any{
		"blend": d.ChildBlend,
	}

	if d.Primitive != nil {
		p["primitive"] = int(d.Primitive.Kind())
		switch prim := d.Primitive.(type) {
		case Cube:
			p["cube.size.x"] = prim.Size.X
			p["cube.size.y"] = prim.Size.Y
			p["cube.size.z"] = prim.Size.Z
		case Sphere:
			p["sphere.radius"] = prim.Radius
		case Cylinder:
			p["cylinder.height"] = prim.Height
			p["cylinder.radius"] = prim.Radius
			p["cylinder.round"] = prim.Round
		case Cone:
			p["cone.height"] = prim.Height
			p["cone.base"] = prim.BaseRadius
			p["cone.top"] = prim.TopRadius
			p["cone.round"] = prim.Round
		case Torus:
			p["torus.major"] = prim.MajorRadius
			p["torus.minor"] = prim.MinorRadius
		case RoundedBox:
			p["rbox.size.x"] = prim.Size.X
			p["rbox.size.y"] = prim.Size.Y
			p["rbox.size.z"] = prim.Size.Z
			p["rbox.round"] = prim.Round
		case Circle:
			p["circle.radius"] = prim.Radius
			p["circle.depth"] = prim.Depth
		case Ring:
			p["ring.outer"] = prim.OuterRadius
			p["ring.inner"] = prim.InnerRadius
			p["ring.depth"] = prim.Depth
		case Polygon:
			p["polygon.sides"] = prim.Sides
			p["polygon.radius"] = prim.Radius
			p["polygon.depth"] = prim.Depth
		case HalfSpace:
			// no parameters
		}
	}

	if d.Mode != nil {
		p["mode"] = d.Mode.String()
		switch m := d.Mode.(type) {
		case Clearance:
			p["clearance.offset"] = m.Offset
			p["clearance.keep"] = m.KeepOriginal
		case Morph:
			p["morph.factor"] = m.Factor
		}
	}

	if d.Shell != nil {
		p["shell.offset"] = d.Shell.Offset
	}

	switch a := d.Array.(type) {
	case LinearArray:
		p["array"] = "linear"
		p["array.x.active"] = a.X.Active
		p["array.x.count"] = a.X.Count
		p["array.x.delta"] = a.X.Delta
		p["array.y.active"] = a.Y.Active
		p["array.y.count"] = a.Y.Count
		p["array.y.delta"] = a.Y.Delta
		p["array.z.active"] = a.Z.Active
		p["array.z.count"] = a.Z.Count
		p["array.z.delta"] = a.Z.Delta
	case RadialArray:
		p["array"] = "radial"
		p["array.count"] = a.Count
		p["array.center.x"] = a.Center[0]
		p["array.center.y"] = a.Center[1]
	}

	return p
}
