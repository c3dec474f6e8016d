package shaders

import (
	"os"
	"strings"

	"github.com/bloeys/gglm/gglm"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"github.com/voiengine/voi/gpuerr"
	"github.com/voiengine/voi/logging"
)

type ShaderProgram struct {
	Id           uint32
	Name         string
	VertShaderId uint32
	FragShaderId uint32
	GeomShaderId uint32
}

type Shader struct {
	Id   uint32
	Type ShaderType
}

func NewShaderProgram(name string) (ShaderProgram, error) {

	id := gl.CreateProgram()
	if id == 0 {
		return ShaderProgram{}, gpuerr.ResourceCreation("shader program "+name, nil)
	}

	return ShaderProgram{Id: id, Name: name}, nil
}

// LoadProgram compiles a program from a vertex and a fragment shader file
func LoadProgram(vertPath, fragPath string) (ShaderProgram, error) {

	vertSrc, err := os.ReadFile(vertPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read vertex shader. Err: ", err)
		return ShaderProgram{}, errors.Wrapf(err, "reading vertex shader %s", vertPath)
	}

	fragSrc, err := os.ReadFile(fragPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read fragment shader. Err: ", err)
		return ShaderProgram{}, errors.Wrapf(err, "reading fragment shader %s", fragPath)
	}

	return CompileProgramSrc(vertPath+"+"+fragPath, []Stage{
		{Type: ShaderType_Vertex, Src: vertSrc},
		{Type: ShaderType_Fragment, Src: fragSrc},
	})
}

func LoadCombinedProgram(shaderPath string) (ShaderProgram, error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return ShaderProgram{}, errors.Wrapf(err, "reading shader %s", shaderPath)
	}

	return CombinedProgramSrc(shaderPath, combinedSource)
}

func CombinedProgramSrc(name string, shaderSrc []byte) (ShaderProgram, error) {

	stages, err := SplitCombinedSource(shaderSrc)
	if err != nil {
		return ShaderProgram{}, err
	}

	return CompileProgramSrc(name, stages)
}

// CompileProgramSrc compiles every stage and links them.
//
// When compiling or linking fails the diagnostics are logged and returned as the error, but the program is still
// returned so the caller can decide whether to carry on with it.
func CompileProgramSrc(name string, stages []Stage) (ShaderProgram, error) {

	sp, err := NewShaderProgram(name)
	if err != nil {
		return ShaderProgram{}, err
	}

	var firstErr error
	for _, st := range stages {

		shdr, err := CompileShaderOfType(st.Src, st.Type)
		if err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "compiling %s shader of %s", st.Type, name)
		}

		if shdr.Id != 0 {
			sp.AttachShader(shdr)
		}
	}

	if err := sp.Link(); err != nil && firstErr == nil {
		firstErr = errors.Wrapf(err, "linking %s", name)
	}

	return sp, firstErr
}

func (sp *ShaderProgram) AttachShader(shader Shader) {

	gl.AttachShader(sp.Id, shader.Id)
	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	case ShaderType_Geometry:
		sp.GeomShaderId = shader.Id
	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d' for shader id '%d'\n", shader.Type, shader.Id)
	}
}

// Link links the attached shaders and deletes them, they are not needed after linking
func (sp *ShaderProgram) Link() error {

	gl.LinkProgram(sp.Id)

	for _, id := range []uint32{sp.VertShaderId, sp.FragShaderId, sp.GeomShaderId} {
		if id != 0 {
			gl.DetachShader(sp.Id, id)
			gl.DeleteShader(id)
		}
	}
	sp.VertShaderId, sp.FragShaderId, sp.GeomShaderId = 0, 0, 0

	var linked int32
	gl.GetProgramiv(sp.Id, gl.LINK_STATUS, &linked)
	if linked == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetProgramiv(sp.Id, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength+1)))
	gl.GetProgramInfoLog(sp.Id, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Printf("Linking of shader program '%s' (id=%d) failed. Err: %s\n", sp.Name, sp.Id, errMsg)
	return errors.New(errMsg)
}

func (sp *ShaderProgram) Bind() {
	gl.UseProgram(sp.Id)
}

func (sp *ShaderProgram) UnBind() {
	gl.UseProgram(0)
}

func (sp *ShaderProgram) Delete() {
	gl.DeleteProgram(sp.Id)
	sp.Id = 0
}

// GetUnifLoc looks the uniform up on every call. Returns -1 (and logs) when the program has no such uniform.
func (sp *ShaderProgram) GetUnifLoc(uniformName string) int32 {

	loc := gl.GetUniformLocation(sp.Id, gl.Str(uniformName+"\x00"))
	if loc == -1 {
		logging.WarnLog.Printf("Uniform '%s' doesn't exist on shader program '%s' (id=%d)\n", uniformName, sp.Name, sp.Id)
	}

	return loc
}

func (sp *ShaderProgram) SetUnifBool(uniformName string, val bool) {

	var v int32
	if val {
		v = 1
	}

	gl.ProgramUniform1i(sp.Id, sp.GetUnifLoc(uniformName), v)
}

func (sp *ShaderProgram) SetUnifInt32(uniformName string, val int32) {
	gl.ProgramUniform1i(sp.Id, sp.GetUnifLoc(uniformName), val)
}

func (sp *ShaderProgram) SetUnifUint32(uniformName string, val uint32) {
	gl.ProgramUniform1ui(sp.Id, sp.GetUnifLoc(uniformName), val)
}

func (sp *ShaderProgram) SetUnifFloat32(uniformName string, val float32) {
	gl.ProgramUniform1f(sp.Id, sp.GetUnifLoc(uniformName), val)
}

func (sp *ShaderProgram) SetUnifVec2(uniformName string, vec2 *gglm.Vec2) {
	gl.ProgramUniform2fv(sp.Id, sp.GetUnifLoc(uniformName), 1, &vec2.Data[0])
}

func (sp *ShaderProgram) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	gl.ProgramUniform3fv(sp.Id, sp.GetUnifLoc(uniformName), 1, &vec3.Data[0])
}

func (sp *ShaderProgram) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	gl.ProgramUniform4fv(sp.Id, sp.GetUnifLoc(uniformName), 1, &vec4.Data[0])
}

func CompileShaderOfType(shaderSource []byte, shaderType ShaderType) (Shader, error) {

	shaderId := gl.CreateShader(shaderType.ToGl())
	if shaderId == 0 {
		return Shader{}, gpuerr.ResourceCreation(shaderType.String()+" shader", errors.Errorf("OpenGl Error=%d", gl.GetError()))
	}

	shaderCStr, shaderFree := gl.Strs(string(shaderSource) + "\x00")
	defer shaderFree()
	gl.ShaderSource(shaderId, 1, shaderCStr, nil)

	gl.CompileShader(shaderId)

	// The shader is kept even when compilation fails, the program it ends up in just won't link
	return Shader{Id: shaderId, Type: shaderType}, getShaderCompileErrors(shaderId)
}

func getShaderCompileErrors(shaderId uint32) error {

	var compiledSuccessfully int32
	gl.GetShaderiv(shaderId, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return nil
	}

	var logLength int32
	gl.GetShaderiv(shaderId, gl.INFO_LOG_LENGTH, &logLength)

	log := gl.Str(strings.Repeat("\x00", int(logLength+1)))
	gl.GetShaderInfoLog(shaderId, logLength, nil, log)

	errMsg := gl.GoStr(log)
	logging.ErrLog.Println("Compilation of shader with id ", shaderId, " failed. Err: ", errMsg)
	return errors.New(errMsg)
}
