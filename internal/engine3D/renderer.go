package engine3D

import (
	"image/color"
	"math"

	"floatscene/internal/convert"
	"floatscene/internal/pointer"
	"floatscene/internal/progress"
	"floatscene/internal/scene"
	"floatscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

// Asset names reported to the progress tracker.
const (
	AssetModel    = "model"
	AssetBackdrop = "backdrop"
	AssetShaders  = "shaders"
)

type RendererOptions struct {
	Camera         pointer.Camera
	Background     color.RGBA
	ModelPath      string
	ModelScale     float64
	BackdropPath   string
	LightColor     color.RGBA
	LightIntensity float64
	Progress       *progress.Tracker
}

// Renderer draws the floating field with raylib. It must be created and used
// on the thread that owns the GL context.
type Renderer struct {
	Camera     rl.Camera3D
	Background rl.Color
	LOD        scene.LOD

	scale     float32
	model     rl.Model
	hitRadius float64

	// plain is raylib's default material, used for distant objects.
	plain rl.Material

	material rl.Shader
	locs     materialLocs
	tonemap  rl.Shader

	lightPos       rl.Vector3
	lightColor     rl.Color
	lightIntensity float32

	backdrop *rl.Texture2D
	target   rl.RenderTexture2D
	targetW  int32
	targetH  int32
}

type materialLocs struct {
	viewPos, lightPos, lightColor, lightIntensity, ambientColor, filmIOR int32
}

func NewRenderer(opts RendererOptions) *Renderer {
	if opts.Progress != nil {
		opts.Progress.Expect(3)
	}
	done := func(name string) {
		if opts.Progress != nil {
			opts.Progress.Done(name)
		}
	}

	r := &Renderer{
		Camera: rl.Camera3D{
			Position:   toRL(opts.Camera.Position),
			Target:     toRL(opts.Camera.Target),
			Up:         toRL(opts.Camera.Up),
			Fovy:       float32(opts.Camera.FovY),
			Projection: rl.CameraPerspective,
		},
		Background:     rl.NewColor(opts.Background.R, opts.Background.G, opts.Background.B, 255),
		LOD:            scene.DefaultLOD,
		scale:          float32(opts.ModelScale),
		lightPos:       rl.NewVector3(10, 20, 10),
		lightColor:     rl.NewColor(opts.LightColor.R, opts.LightColor.G, opts.LightColor.B, 255),
		lightIntensity: float32(opts.LightIntensity),
	}

	r.material = rl.LoadShaderFromMemory(iridescentVS, iridescentFS)
	r.tonemap = rl.LoadShaderFromMemory("", tonemapFS)
	if r.material.ID == 0 || r.tonemap.ID == 0 {
		utils.Error("Renderer: shader compilation failed, falling back to default material")
	}
	r.locs = materialLocs{
		viewPos:        rl.GetShaderLocation(r.material, "viewPos"),
		lightPos:       rl.GetShaderLocation(r.material, "lightPos"),
		lightColor:     rl.GetShaderLocation(r.material, "lightColor"),
		lightIntensity: rl.GetShaderLocation(r.material, "lightIntensity"),
		ambientColor:   rl.GetShaderLocation(r.material, "ambientColor"),
		filmIOR:        rl.GetShaderLocation(r.material, "filmIOR"),
	}
	done(AssetShaders)

	r.loadModel(opts.ModelPath)
	done(AssetModel)

	r.loadBackdrop(opts.BackdropPath)
	done(AssetBackdrop)

	return r
}

func (r *Renderer) loadModel(path string) {
	if path != "" {
		utils.Debug("Renderer: loading model %s", path)
		r.model = rl.LoadModel(path)
	}
	if r.model.MeshCount == 0 {
		if path != "" {
			utils.Error("Renderer: failed to load model %s, using placeholder", path)
		}
		r.model = rl.LoadModelFromMesh(rl.GenMeshTorus(0.05, 0.04, 16, 24))
	}

	// Geometry only; the material is always synthesized.
	r.plain = rl.LoadMaterialDefault()
	r.setShader(r.material)

	box := rl.GetModelBoundingBox(r.model)
	extent := rl.Vector3Subtract(box.Max, box.Min)
	radius := float64(rl.Vector3Length(extent)) / 2 * float64(r.scale)
	if radius <= 0 {
		radius = 0.5
	}
	r.hitRadius = radius

	utils.Info("Renderer: model ready (%d meshes, radius %.2f)", r.model.MeshCount, radius)
}

// setShader points every material of the model at sh.
func (r *Renderer) setShader(sh rl.Shader) {
	if sh.ID == 0 {
		return
	}
	mats := r.model.GetMaterials()
	for i := range mats {
		mats[i].Shader = sh
	}
}

func (r *Renderer) loadBackdrop(path string) {
	if path == "" {
		return
	}
	img, err := convert.LoadImage(path)
	if err != nil {
		utils.Error("Renderer: backdrop unavailable: %v", err)
		return
	}
	rlImg := rl.NewImageFromImage(convert.ToRGBA(img))
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	r.backdrop = &tex
	utils.Info("Renderer: backdrop %s (%dx%d)", path, tex.Width, tex.Height)
}

// HitRadius is the bounding sphere radius of one scaled model.
func (r *Renderer) HitRadius() float64 { return r.hitRadius }

func (r *Renderer) ensureTarget(width, height int32) {
	if width == r.targetW && height == r.targetH && r.target.ID != 0 {
		return
	}
	if r.target.ID != 0 {
		rl.UnloadRenderTexture(r.target)
	}
	r.target = rl.LoadRenderTexture(width, height)
	r.targetW, r.targetH = width, height
}

func (r *Renderer) updateUniforms() {
	if r.material.ID == 0 {
		return
	}
	cam := r.Camera.Position
	light := r.lightPos
	lc := r.lightColor
	bg := r.Background

	rl.SetShaderValue(r.material, r.locs.viewPos, []float32{cam.X, cam.Y, cam.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(r.material, r.locs.lightPos, []float32{light.X, light.Y, light.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(r.material, r.locs.lightColor, []float32{float32(lc.R) / 255, float32(lc.G) / 255, float32(lc.B) / 255}, rl.ShaderUniformVec3)
	rl.SetShaderValue(r.material, r.locs.lightIntensity, []float32{r.lightIntensity}, rl.ShaderUniformFloat)
	rl.SetShaderValue(r.material, r.locs.ambientColor, []float32{
		0.35 + float32(bg.R)/255, 0.35 + float32(bg.G)/255, 0.38 + float32(bg.B)/255,
	}, rl.ShaderUniformVec3)
	rl.SetShaderValue(r.material, r.locs.filmIOR, []float32{1.8}, rl.ShaderUniformFloat)
}

// Draw renders the objects into the offscreen target and presents it through
// the tone mapping pass. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(objects []scene.Object, showHitSpheres bool) {
	width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if width <= 0 || height <= 0 {
		return
	}
	r.ensureTarget(width, height)
	r.updateUniforms()

	rl.BeginTextureMode(r.target)
	rl.ClearBackground(r.Background)
	r.drawBackdrop(width, height)

	rl.BeginMode3D(r.Camera)
	camPos := fromRL(r.Camera.Position)
	var far []int
	for i := range objects {
		switch r.LOD.Select(objects[i].State.Position.Sub(camPos).Len()) {
		case scene.DetailFull:
			r.drawObject(&objects[i], showHitSpheres)
		case scene.DetailLow:
			far = append(far, i)
		}
	}
	if len(far) > 0 {
		r.setShader(r.plain.Shader)
		for _, i := range far {
			r.drawObject(&objects[i], showHitSpheres)
		}
		r.setShader(r.material)
	}
	rl.EndMode3D()
	rl.EndTextureMode()

	src := rl.NewRectangle(0, 0, float32(r.target.Texture.Width), -float32(r.target.Texture.Height))
	dst := rl.NewRectangle(0, 0, float32(width), float32(height))
	if r.tonemap.ID != 0 {
		rl.BeginShaderMode(r.tonemap)
	}
	rl.DrawTexturePro(r.target.Texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	if r.tonemap.ID != 0 {
		rl.EndShaderMode()
	}
}

func (r *Renderer) drawObject(obj *scene.Object, showHitSpheres bool) {
	pos := toRL(obj.State.Position)
	axis, angle := axisAngle(obj.State.Orientation)
	rl.DrawModelEx(r.model, pos, axis, angle, rl.NewVector3(r.scale, r.scale, r.scale), rl.White)

	if showHitSpheres {
		rl.DrawSphereWires(pos, float32(r.hitRadius), 6, 8, rl.NewColor(0, 255, 255, 100))
	}
}

// drawBackdrop covers the screen with the backdrop, cropping to keep its aspect.
func (r *Renderer) drawBackdrop(width, height int32) {
	if r.backdrop == nil {
		return
	}
	tw, th := float64(r.backdrop.Width), float64(r.backdrop.Height)
	scale := math.Max(float64(width)/tw, float64(height)/th)
	srcW, srcH := float64(width)/scale, float64(height)/scale

	src := rl.NewRectangle(float32((tw-srcW)/2), float32((th-srcH)/2), float32(srcW), float32(srcH))
	dst := rl.NewRectangle(0, 0, float32(width), float32(height))
	rl.DrawTexturePro(*r.backdrop, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (r *Renderer) Unload() {
	rl.UnloadModel(r.model)
	rl.UnloadMaterial(r.plain)
	if r.backdrop != nil {
		rl.UnloadTexture(*r.backdrop)
	}
	if r.target.ID != 0 {
		rl.UnloadRenderTexture(r.target)
	}
	if r.material.ID != 0 {
		rl.UnloadShader(r.material)
	}
	if r.tonemap.ID != 0 {
		rl.UnloadShader(r.tonemap)
	}
}

func toRL(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func fromRL(v rl.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// axisAngle converts an orientation to raylib's axis plus degrees form.
func axisAngle(q mgl64.Quat) (rl.Vector3, float32) {
	q = q.Normalize()
	if q.W < 0 {
		q = q.Scale(-1)
	}
	angle := 2 * math.Acos(mgl64.Clamp(q.W, -1, 1))
	s := math.Sqrt(1 - q.W*q.W)
	if s < 1e-6 {
		return rl.NewVector3(1, 0, 0), 0
	}
	axis := q.V.Mul(1 / s)
	return toRL(axis), float32(mgl64.RadToDeg(angle))
}
