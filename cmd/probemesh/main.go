// Command probemesh builds a tetrahedral mesh over a set of light probes
// and writes it along with optional debug views.
//
//	probemesh -probes scene.glb -prefix probe -out mesh.json -png mesh.png
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/soypat/lightprobe"
	"github.com/soypat/lightprobe/helpers/probeio"
	"github.com/soypat/lightprobe/render"
)

func main() {
	var (
		probesPath = flag.String("probes", "", "probe file, .json or .gltf/.glb")
		prefix     = flag.String("prefix", "", "name prefix of glTF nodes used as probes")
		outPath    = flag.String("out", "", "JSON mesh output file")
		stlPath    = flag.String("stl", "", "STL output of the tetrahedra")
		glbPath    = flag.String("glb", "", "binary glTF output of the convex hull")
		pngPath    = flag.String("png", "", "PNG preview of the tetrahedra")
		plotPath   = flag.String("plot", "", "XY projection plot of the mesh")
		shrink     = flag.Float64("shrink", 0.15, "tetrahedra shrink factor for STL and PNG output")
		validate   = flag.Bool("validate", true, "validate probes before building")
		dupTol     = flag.Float64("duptol", lightprobe.DefaultValidateConfig().DuplicateTolerance, "duplicate probe distance")
		margin     = flag.Float64("margin", lightprobe.DefaultCircumSphereMargin, "circumsphere containment margin, negative for none")
	)
	flag.Parse()
	if *probesPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	probes, err := probeio.ReadProbesFile(*probesPath, *prefix)
	if err != nil {
		log.Fatal(err)
	}
	if *validate {
		err = lightprobe.Validate(probes, lightprobe.ValidateConfig{DuplicateTolerance: *dupTol})
		if err != nil {
			log.Fatal(err)
		}
	}

	start := time.Now()
	d := lightprobe.NewDelaunay(lightprobe.Config{CircumSphereMargin: *margin})
	mesh := d.Build(probes)
	inner := mesh.InnerCount()
	log.Printf("built %d tetrahedra and %d outer cells over %d probes in %s",
		inner, len(mesh.Tetrahedra)-inner, len(mesh.Probes), time.Since(start))

	if *outPath != "" {
		fp, err := os.Create(*outPath)
		if err != nil {
			log.Fatal(err)
		}
		err = probeio.WriteMesh(fp, &mesh)
		if err != nil {
			log.Fatal(err)
		}
		if err = fp.Close(); err != nil {
			log.Fatal(err)
		}
	}
	if *stlPath != "" {
		err = render.CreateSTL(*stlPath, render.NewTetraRenderer(&mesh, *shrink))
		if err != nil {
			log.Fatal(err)
		}
	}
	if *glbPath != "" {
		err = render.WriteGLB(*glbPath, "hull", render.HullTriangles(&mesh))
		if err != nil {
			log.Fatal(err)
		}
	}
	if *pngPath != "" {
		err = render.WritePNG(*pngPath, render.TetraTriangles(&mesh, *shrink), render.DefaultView())
		if err != nil {
			log.Fatal(err)
		}
	}
	if *plotPath != "" {
		if err = render.PlotXY(*plotPath, &mesh); err != nil {
			log.Fatal(err)
		}
	}
}
